// Copyright 2021 The typicode Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package transient sorts the errors produced while sending a request
// into buckets: errors worth retrying, cancellations, and everything
// else.
//
// The retry package uses Categorize to decide whether a failed attempt
// gets another go, and the root package uses it to tell a cancelled
// request apart from one that simply received no response.
package transient
