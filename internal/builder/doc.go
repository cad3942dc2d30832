/*
Package builder compiles a config.Model into a live computation graph of
*node.Node values. It is the bridge between the declarative expression files
(parsed by the 'hcl' package) and the differentiation engine (the 'node' and
'graph' packages).

Construction is a multi-phase process:

 1. Registration: every leaf and definition name becomes a vertex in a
    name-keyed 'dag' graph. Duplicate names are rejected.

 2. Linking: the variable references of each definition's expression become
    edges from the referenced name to the definition. References to names that
    were never declared are rejected with their source range.

 3. Ordering: the 'dag' graph is sorted topologically, which also rejects
    reference cycles. Definitions may therefore appear in any order in the
    source files.

 4. Compilation: leaves become labeled leaf nodes and each definition's
    hclsyntax expression tree is walked, applying the matching node operator
    at every arithmetic operator or function call.

The result is a *Program holding every named node and the roots to run
backward passes from.
*/
package builder
