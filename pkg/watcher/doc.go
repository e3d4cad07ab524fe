// Package watcher keeps the link farm current while Steam runs. It holds a
// small state machine (idle, debouncing, reconciling): filesystem events
// from screenshot storage open a settle window, more events restart it, and
// when it elapses one reconciliation pass runs. Bursts of writes, like a
// play session uploading thirty screenshots, collapse into a single pass.
//
// The loop never runs two passes at once and keeps no state between them;
// each pass's report supplies the next set of directories to watch.
package watcher
