// package wait provides functions to help with waiting for certain conditions to be true.
//
// A `For` function is provided that can handle polling a given `WaitCondition` until it results in true or
// errors (either through a problem or a timeout condition).
//
// A collection of conditions are also included that can be used with either the provided `For` function or
// or with the `Eventually` function from Gomega
//
// # Example using `For` with the `IsDevWorkspaceRunning` condition
//
//	err := wait.For(
//		wait.IsDevWorkspaceRunning(ctx, tool, "empty", "admin-devspaces"),
//		wait.WithContext(ctx),
//		wait.WithTimeout(6*time.Minute),
//		wait.WithInterval(5*time.Second),
//	)
//	if errors.Is(err, context.DeadlineExceeded) {
//		// workspace never became ready
//	}
//
// # Example using Gomega's `Eventually` with the `AreWorkspaceContainersReadySlice` condition
//
//	Eventually(
//		wait.AreWorkspaceContainersReadySlice(ctx, client, "empty", "admin-devspaces"),
//		5*time.Minute,
//		10*time.Second,
//	).Should(BeEmpty())
//
// The WaitCondition functions return a success boolean and an error. The polling of the condition will
// continue until one of three things occurs:
//
//  1. The success boolean is returned as `true`
//  2. An error is returned from the WaitCondition function
//  3. A timeout occurs, resulting in an error being returned
package wait
