// Package anvil is an incremental build and process-orchestration engine
// for small native projects. It tracks file modification timestamps to
// decide whether compilation is needed, spawns and manages native
// processes synchronously or in async groups, and can detect that its
// own build driver source changed, rebuild it, and replace the running
// process image with the fresh binary.
//
// A minimal self-hosting build driver looks like this:
//
//	func main() {
//		log := anvil.NewLogger(anvil.LoggerOptions{Level: anvil.LevelInfo, Color: true})
//		eng := anvil.NewEngine(log)
//
//		// Recompile and restart this driver if its source changed.
//		eng.AutoRebuild("build.go")
//
//		cmd := eng.DefaultCBuild("demo.c", "demo")
//		cmd.Append("-O2")
//		if err := eng.Run(cmd); err != nil {
//			os.Exit(1)
//		}
//	}
//
// Run consults the freshness oracle and skips compilation when the
// output is newer than its source; RunAlways skips the check. Both
// consume the command: after either call returns, the buffer is
// released and must not be reused.
//
// Concurrency is entirely at the OS-process level. Commands marked
// async run as concurrent child processes collected into a Group; the
// engine itself is single-threaded, and Wait/WaitGroup are its only
// blocking operations.
package anvil
