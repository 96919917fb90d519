// Copyright 2021 The typicode Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package request holds the two types the typicode client engine is built
around: Plan, a request that can be sent more than once, and Execution,
the running record of sending it.

A Plan is an http.Request cut down to what a client needs, with the
body buffered up front so that every attempt can replay it:

	p, err := request.NewPlan("GET", "https://jsonplaceholder.typicode.com/todos", nil)
	...
	e, err := client.Do(p)

The plan's context governs the whole execution, retries and waits
included. Cancel it and the execution stops at the next opportunity:

	p, err := request.NewPlanWithContext(ctx, "DELETE", "https://jsonplaceholder.typicode.com/todos/1", nil)

Deadlines on individual attempts come from the client's timeout policy
and are layered under the plan context, so an attempt can end either
because its own deadline passed (retryable) or because the plan's did
(final).

An Execution is handed to every timeout policy, retry policy and event
handler the client calls while running a plan, and is returned to the
caller once the plan is done. Callers rarely build one themselves.
*/
package request
