// Package jsonschema compiles JSON Schema Draft 2020-12 documents into a
// reusable schema graph and evaluates instances against them, returning
// Flag, Basic, Detailed, or Verbose output.
//
// A Builder assembles an Engine from a default Dialect, optional external
// Resolvers and Deserializers, and compile-time limits; Engine.Compile and
// Engine.CompileBytes add schema documents to it, and Engine.Evaluate runs
// a compiled schema against a decoded instance Value.
//
// Credit to https://github.com/santhosh-tekuri/jsonschema for format validators.
package jsonschema
