package pkg

import (
	"github.com/sirupsen/logrus"
)

// Log is the process-wide logger. The root command reconfigures the
// underlying logger once flags have been parsed.
var Log = logrus.NewEntry(logrus.StandardLogger())
