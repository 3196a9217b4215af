package kademlia

import "github.com/sirupsen/logrus"

// logHelper is a small per-component logging wrapper, mirroring the
// teacher's crypto.LoggerHelper: every line carries a package/component
// field so DHT log output can be filtered per node or per concern without
// string-matching the message text.
type logHelper struct {
	fields logrus.Fields
}

func newLogger(component string) *logHelper {
	return &logHelper{fields: logrus.Fields{"component": component}}
}

func (l *logHelper) with(id ID) *logHelper {
	fields := make(logrus.Fields, len(l.fields)+1)
	for k, v := range l.fields {
		fields[k] = v
	}
	fields["node"] = id.String()
	return &logHelper{fields: fields}
}

func (l *logHelper) withError(err error) *logHelper {
	fields := make(logrus.Fields, len(l.fields)+1)
	for k, v := range l.fields {
		fields[k] = v
	}
	fields["error"] = err.Error()
	return &logHelper{fields: fields}
}

func (l *logHelper) Debug(msg string) { logrus.WithFields(l.fields).Debug(msg) }
func (l *logHelper) Info(msg string)  { logrus.WithFields(l.fields).Info(msg) }
func (l *logHelper) Warn(msg string)  { logrus.WithFields(l.fields).Warn(msg) }
