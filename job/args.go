package job

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Args is implemented by every job argument type. Args are encoded with
// encoding/json and must encode to a JSON object; types that need a custom
// encoding implement json.Marshaler.
type Args interface {
	// Kind uniquely identifies the type of job. It's stored with the job so
	// that workers can find the right handler, so it must stay stable across
	// deploys even if the Go type is renamed.
	Kind() string
}

// ArgsWithInsertOpts is an optional extension of Args providing job-specific
// insert options. They take precedence over library defaults and are
// overridden by options passed to the insert call.
type ArgsWithInsertOpts interface {
	Args
	InsertOpts() InsertOpts
}

// MapArgs is an Args for jobs whose payload is a plain map rather than a
// dedicated struct.
type MapArgs struct {
	KindName string
	Values   map[string]any
}

// NewMapArgs returns a MapArgs for kind with the given values.
func NewMapArgs(kind string, values map[string]any) MapArgs {
	return MapArgs{KindName: kind, Values: values}
}

// Kind implements Args.
func (a MapArgs) Kind() string { return a.KindName }

// MarshalJSON encodes the values. A nil map encodes as an empty object.
func (a MapArgs) MarshalJSON() ([]byte, error) {
	if a.Values == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(a.Values)
}

// EncodeArgs validates args and returns their compacted JSON encoding, which
// is the form stored in the args column.
func EncodeArgs(args Args) ([]byte, error) {
	if args == nil || args.Kind() == "" {
		return nil, &ArgsError{Err: ErrMissingKind}
	}
	kind := args.Kind()

	raw, err := json.Marshal(args)
	if err != nil {
		return nil, &ArgsError{Kind: kind, Err: fmt.Errorf("%w: %w", ErrInvalidPayload, err)}
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return nil, &ArgsError{Kind: kind, Err: fmt.Errorf("%w: %w", ErrInvalidPayload, err)}
	}
	encoded := buf.Bytes()
	if len(encoded) == 0 || encoded[0] != '{' {
		return nil, &ArgsError{Kind: kind, Err: ErrInvalidPayload}
	}

	return encoded, nil
}
