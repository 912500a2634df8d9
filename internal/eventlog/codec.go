package eventlog

import "encoding/json"

// Decode reads a stored payload back into a Log. The column is hand-editable
// and has lived through schema drift, so decoding never fails: empty input,
// unparsable JSON, or an unrecognized version all come back as an empty log.
// Unknown fields inside a version-1 payload are ignored.
func Decode(raw []byte) Log {
	if len(raw) == 0 {
		return Log{Version: Version}
	}
	var l Log
	if err := json.Unmarshal(raw, &l); err != nil {
		return Log{Version: Version}
	}
	if l.Version != Version {
		return Log{Version: Version}
	}
	if l.GoalEvents == nil {
		l.GoalEvents = []GoalEvent{}
	}
	if l.PenaltyEvents == nil {
		l.PenaltyEvents = []PenaltyEvent{}
	}
	return l
}

// Encode serializes a Log for storage, stamping the current version.
func Encode(l Log) ([]byte, error) {
	l.Version = Version
	return json.Marshal(l)
}
