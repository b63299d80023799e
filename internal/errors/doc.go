// Package errors is the structured error type shared by every layer of the
// builder service.
//
// Repositories return NotFound/AlreadyExists, orchestrators validate input
// with a ValidationBuilder and wrap collaborator failures, and the gRPC
// handlers convert the result with ToGRPCError.
//
//	if err := vb.Build(); err != nil {
//	    return nil, err
//	}
//
//	char, err := repo.Get(ctx, id)
//	if err != nil {
//	    return nil, errors.Wrapf(err, "failed to get character %s", id)
//	}
//
// Wrap keeps the code of an existing *Error, so a NotFound from the
// repository is still NotFound at the handler. Metadata added with WithMeta is
// copied along and ends up as a google.protobuf.Struct status detail.
//
// Equipment and ability rule violations are not errors. The rules packages
// report them as values (rejections and warnings) and only store failures
// reach this package.
package errors
