// Copyright 2021 The typicode Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package timeout decides how long each attempt of a request plan may
// take. It is distinct from a request's overall timeout, which bounds
// the whole plan including retries and is set on the plan context.
package timeout
