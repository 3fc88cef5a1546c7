package dbexport

import (
	"encoding/json"
	"strconv"
)

// ExportRequest is one export invocation.
// Zero BatchSize and empty OutputName mean "not given".
type ExportRequest struct {
	ConnectionString string
	Query            string
	BatchSize        int
	OutputName       string
}

// Validate reports a KindArgument error when a required field is empty.
func (r ExportRequest) Validate() error {
	if r.ConnectionString == "" {
		return newError(KindArgument, nil, "missing connection string")
	}
	if r.Query == "" {
		return newError(KindArgument, nil, "missing query")
	}
	return nil
}

// ParseArgs maps positional arguments
// [connectionString, query, batchSize?, outputName?] to a request.
// A batch size that is not a positive integer is ignored.
func ParseArgs(argv []string) (ExportRequest, error) {
	if len(argv) < 2 {
		return ExportRequest{}, newError(KindArgument, nil, "not enough arguments: expected a connection string and a query, got %d argument(s)", len(argv))
	}
	req := ExportRequest{ConnectionString: argv[0], Query: argv[1]}
	if len(argv) > 2 {
		if n, err := strconv.Atoi(argv[2]); err == nil && n > 0 {
			req.BatchSize = n
		}
	}
	if len(argv) > 3 {
		req.OutputName = argv[3]
	}
	return req, req.Validate()
}

// Result is the envelope handed back to the host.
type Result struct {
	Success bool    `json:"success"`
	Msg     string  `json:"msg"`
	Fname   *string `json:"fname"`
}

// Success reports a finished export of path.
func Success(path string) Result {
	return Result{Success: true, Msg: "Success: " + path, Fname: &path}
}

// Failure reports err without a file name.
func Failure(err error) Result {
	return Result{Success: false, Msg: "Error: " + err.Error()}
}

// JSON encodes the envelope as {"success":..,"msg":..,"fname":..}.
func (r Result) JSON() string {
	b, err := json.Marshal(r)
	if err != nil {
		// only strings and a bool; this cannot fail
		return `{"success":false,"msg":"Error: encoding result","fname":null}`
	}
	return string(b)
}
