package cmd

import (
	"strings"
)

// driverHint returns advice for failure messages that look like a driver
// manager or login problem, matching common unixODBC, Windows and SQL Server
// messages. It returns "" when nothing matches.
func driverHint(msg string) string {
	var patterns = []struct {
		substr string
		hint   string
	}{
		{"is not registered", hintDriver},
		{"data source name not found", hintDSN},
		{"no default driver specified", hintDSN},
		{"can't open lib", hintDriver},
		{"specified driver could not be loaded", hintDriver},
		{"login failed", hintLogin},
		{"authentication failed", hintLogin},
		{"password", hintLogin},
		{"access denied", hintLogin},
	}
	lower := strings.ToLower(msg)
	for _, p := range patterns {
		if strings.Contains(lower, p.substr) {
			return p.hint
		}
	}
	return ""
}

const (
	hintDriver = "the driver could not be loaded: check that it is installed and listed in odbcinst.ini (odbcinst -q -d), or pick another --driver"
	hintDSN    = "the data source could not be resolved: check the Driver={...} or DSN= part of the connection string (odbcinst -q -s lists DSNs)"
	hintLogin  = "the server rejected the credentials: check the Uid/Pwd part of the connection string"
)
