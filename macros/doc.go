/*

The macros package expands parameterized text macros. A definitions document
holds any number of macro definitions of the form

	##name#param1#param2##body##

and a source document holds invocations of the form

	##name#arg1#arg2##

You construct a Loader, feed it one or more definitions documents and then
take the resulting Table. The Table is never changed after it is taken and
so it can be shared freely. Calling Expand on the Table replaces every
invocation in a source document with the body of the named macro, each
parameter having been replaced by the corresponding argument. All other
text is copied through unchanged.

Parameters are replaced in the order they are declared and each
replacement is a plain replace-all of the parameter text over the body as
it stands after the previous replacements. So if one parameter name is part
of another, or part of an earlier argument, the later replacement will
change that text too. The expanded body is not itself searched for further
invocations: macros do not nest.

There is no way to escape the mark character. The first double mark after a
body starts always ends the body.

Any badly-formed definition or invocation, any invocation of an unknown
macro and any invocation with the wrong number of arguments is reported as
an error. The error can be tested with errors.Is against the Err... values
and carries the source name and line where the offending macro started.

The mark character is '#' by default but can be changed with the Mark
option.

*/
package macros
