// Package httputil provides retry helpers for fetching remote tree documents.
//
// [Retry] calls a function up to a fixed number of attempts, doubling the
// delay between attempts. Only errors wrapped with [Retryable] trigger a
// retry; any other error is returned immediately:
//
//	err := httputil.Retry(ctx, 3, time.Second, func() error {
//	    resp, err := client.Do(req)
//	    if err != nil {
//	        return httputil.Retryable(fmt.Errorf("%w: %v", httputil.ErrNetwork, err))
//	    }
//	    ...
//	})
//
// Cancelling ctx during a backoff wait ends the loop with ctx.Err().
package httputil
