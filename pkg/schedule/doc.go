// Package schedule runs recurring exports.
//
// Scheduler executes an export job on a standard 5-field cron
// expression. A tick that arrives while the previous export is still
// running is skipped, so slow exports never pile up.
//
// ConfigWatcher watches the configuration file and triggers a reload
// callback when it changes on disk. Events are debounced so editors
// that write in several steps cause a single reload.
package schedule
