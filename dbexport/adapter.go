package dbexport

import "context"

// Run parses argv and exports. Argument errors are reported without connecting.
func Run(ctx context.Context, x *Exporter, argv []string) Result {
	req, err := ParseArgs(argv)
	if err != nil {
		return Failure(err)
	}
	return x.Export(ctx, req)
}

// Handle is Run with the result serialized for the host.
func Handle(ctx context.Context, x *Exporter, argv []string) string {
	return Run(ctx, x, argv).JSON()
}
