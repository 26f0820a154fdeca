// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package testutil provides shared test helpers: an in-memory state factory, a
temp-dir persist manager, election fixtures, a recording platform.Renderer
fake, and the HTTP request/response assertion helpers used by handler tests.
*/
package testutil
