// package logger inplements a logging function for use within the test framework and can be used within test cases.
//
// The output of the log lines can be controlled with [LogWriter]
//
// # Example using Ginkgo
//
//	import "github.com/eclipse-che/apitest/pkg/logger"
//
//	func TestExample() {
//		logger.LogWriter = GinkgoWriter
//
//		logger.Log("This will now output to the Ginkgo log output")
//	}
//
// Failures that are reported but shouldn't fail a test (e.g. a workspace that couldn't be deleted)
// are written with [Warn].
package logger
