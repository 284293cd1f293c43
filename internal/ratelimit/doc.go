// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package ratelimit implements a token-bucket rate limiter over a pluggable
// quota store.
//
// A bucket holds at most Capacity tokens and refills continuously at
// RefillRate tokens per RefillInterval. Each consume first refills the
// bucket for the time elapsed since its last update, caps it at Capacity,
// and then subtracts cost if enough tokens remain. The refill-then-consume
// step is atomic per key inside the store:
//
//   - [RedisStore] runs it as one server-side Lua script, so every process
//     sharing the Redis instance observes the same bucket;
//   - [MemoryStore] keeps one golang.org/x/time/rate limiter per key and is
//     only correct within a single process.
//
// [Limiter] wraps a store with a per-call timeout and an explicit policy
// for store failures.
package ratelimit
