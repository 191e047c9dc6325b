// Package quantor provides a preemptive priority scheduling simulator.
//
// The simulator maintains a process table, a priority-ordered ready
// queue with aging, and a blocked set, driven by a fixed-quantum
// scheduling loop. It comes with pluggable service layers such as:
//
//   - engine  – the scheduling core and its worker loop
//   - queue   – the priority ready queue
//   - stats   – statistics aggregation and change notification
//   - event   – transition events delivered over messaging queues
//   - procfs  – a proc-file style text command interface
//
// Quantor is designed to be embedded in host applications. End-users
// typically interact with the simulator via the high-level Service
// façade exposed by the root package:
//
//	srv, _ := quantor.New()
//	rt := srv.Runtime()
//	p, _ := rt.CreateProcess(ctx, "worker", 5, 2500)
//	_ = rt.Start(ctx)
//	fmt.Println(rt.ProcFS().Read(ctx))
//
// For more details see the individual sub-packages.
package quantor
