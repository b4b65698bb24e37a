// Package command assembles dispatchable move-item commands from the
// entities extracted out of an operator message.
//
// The builder is pure decision logic: given one request's entity sequence it
// either produces a fallback response (nothing to dispatch) or a single
// "start" command plus a success response. "No catalog match" is a normal
// outcome here, deliberately distinct from collaborator errors, which never
// reach this package.
package command
