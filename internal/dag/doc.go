// Package dag orders the named definitions of an expression file. Each leaf
// or node definition is a vertex keyed by its name, and an edge from one name
// to another records that the second definition's expression references the
// first. The builder uses the resulting order to compile definitions only
// after everything they reference exists, and rejects files whose references
// form a cycle.
package dag
