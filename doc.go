// Copyright 2021 The typicode Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package typicode provides a promise-free, configuration-driven REST
client: request defaults, interceptors, body transformers, typed errors
and cancellation, on top of a robust retrying executor.

Create a Client to begin making requests.

	client := typicode.New(&typicode.Config{
		BaseURL: "https://jsonplaceholder.typicode.com",
		Timeout: 5 * time.Second,
	})
	resp, err := client.Get(ctx, "/todos", typicode.WithParam("_limit", "5"))
	...
	resp, err := client.Post(ctx, "/todos", &Todo{Title: "New Todo"})

A failed request returns an *Error. Its Kind says how far the request
got: SetupError means nothing was sent, RequestError means no response
arrived, ResponseError means the status failed validation and the
Response is attached, and CancelError means a CancelToken fired.

	resp, err := client.Get(ctx, "/todoss")
	if e, ok := typicode.AsError(err); ok && e.Kind == typicode.ResponseError {
		fmt.Println(e.Response.Status, e.Response.Data)
	}

Interceptors run on every request a client sends. Request interceptors
run in reverse registration order, response interceptors in
registration order:

	client.Interceptors.Request.Use(typicode.LogRequests(logger), nil)
	client.Interceptors.Request.Use(typicode.RequestID(), nil)

To cancel a request from elsewhere, use a CancelSource:

	source := typicode.NewCancelSource()
	go func() {
		_, err := client.Get(ctx, "/todos", typicode.WithCancelToken(source.Token))
		fmt.Println(typicode.IsCancel(err))
	}()
	source.Cancel("Request Canceled!")

To send several requests concurrently and wait for all of them, use All:

	rs, err := typicode.All(ctx,
		client.Call(&typicode.Config{URL: "/todos"}),
		client.Call(&typicode.Config{URL: "/posts"}))

Below the Config level, Client.Do runs a request.Plan through the retry
loop. For control over the client's retry decisions and timing, create a
custom retry policy using components from package retry:

	retryWaiter := retry.NewExpWaiter(250*time.Millisecond, 5*time.Second, time.Now())
	client.RetryPolicy = retry.NewPolicy(retry.DefaultDecider, retryWaiter)

For control over the client's individual attempt timeouts, set a custom
timeout policy using package timeout:

	client.TimeoutPolicy = timeout.Fixed(10 * time.Second)

To hook into the fine-grained details of request execution, install a
handler into the appropriate handler chain:

	handlers := &typicode.HandlerGroup{}
	handlers.PushBack(typicode.AfterAttempt, typicode.LogHandler(logger))
	client.Handlers = handlers

Package typicode provides basic interfaces for each method of the client
(Requester, Getter, Header, Deleter, Poster, Putter, Patcher and
IdleCloser); a combined interface that composes them all (Executor);
and utility functions for working with any Requester (Inflate, Get,
Head, Delete, Post, Put and Patch).
*/
package typicode
