// Package job defines the job row model, job args, insert options, and the
// driver contract used to persist new jobs.
//
// # Job Row
//
// A [Row] is a job as stored. Jobs are inserted in one of two states:
//
//	available   ScheduledAt at or before now
//	scheduled   ScheduledAt in the future
//
// Every later transition (running, retryable, completed, discarded,
// cancelled) belongs to the worker process.
//
// # Args
//
// Job arguments implement [Args]. They're encoded with encoding/json and must
// encode to a JSON object:
//
//	type SendEmailArgs struct {
//	    To      string `json:"to"`
//	    Subject string `json:"subject"`
//	}
//
//	func (SendEmailArgs) Kind() string { return "send_email" }
//
// Args that want their own defaults implement [ArgsWithInsertOpts].
//
// # Insert Options
//
// [ResolveOpts] applies three layers per field: options passed to the insert
// call, then options returned by the args, then the package defaults
// ([MaxAttemptsDefault], [PriorityDefault], [QueueDefault]).
//
// # Drivers
//
// A [Driver] hands out [Executor] values bound either to the backend's
// default handle or to a caller transaction. Executors return a [Record],
// which [ToRow] decodes.
package job
