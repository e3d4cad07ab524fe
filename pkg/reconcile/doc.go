// Package reconcile drives the link farm toward the desired state in
// three phases. Observe reads the destination tree two levels deep, diff
// computes the minimal change set against the plan, and apply executes
// each change as its own synthfs pipeline so one failure never stalls a
// pass.
//
// The package holds the safety line for the whole tool: the only things
// it ever removes are symlinks whose targets point into Steam screenshot
// storage, and directories those removals leave empty. Real files, real
// directories and foreign symlinks at desired paths are reported as
// conflicts and left exactly where they are.
package reconcile
