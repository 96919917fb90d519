// Copyright 2021 The typicode Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package placeholder serves a small in-memory imitation of the
// JSONPlaceholder REST API: the todos, posts and comments resources
// with list, item, create, replace, update and delete routes.
//
// Like the real service, writes are echoed back but never stored. The
// server backs the CLI's offline mode and the tests of every package
// that talks HTTP.
package placeholder
