package jsonschema

import "github.com/kaptinlin/jsonschema/uri"

// draft202012MetaschemaURI is the metaschema URI that identifies the
// 2020-12 dialect, both as DialectRegistry's lookup key and as the value a
// document's own "$schema" must name to select it.
const draft202012MetaschemaURI = "https://json-schema.org/draft/2020-12/schema"

// Draft2020_12 returns the dialect implementing the 2020-12 vocabulary set
// named throughout spec.md: every keyword in this module, ordered so that
// Compile/Evaluate order (NewDialect's sole ordering authority, dialect.go)
// satisfies each keyword's dependency on its siblings:
//
//   - additionalProperties reads the annotations properties/patternProperties
//     already left on Context.Siblings(), so it must follow both.
//   - items reads prefixItems's compiled length via CompileContext.Value(),
//     so it must follow prefixItems (a Compile-time dependency, not an
//     annotation one, but kept in the same relative order for clarity).
//   - unevaluatedItems/unevaluatedProperties read every other keyword's
//     annotations, including nested applicators (allOf, if/then/else, $ref,
//     dependentSchemas), so they are registered last of all.
//   - $defs/definitions carry no applicator semantics of their own, but
//     must still be registered as subschemer so T1's walk reaches every
//     definition (otherwise a $ref or $dynamicAnchor inside an otherwise
//     unreferenced $defs entry would never get a SchemaKey).
func Draft2020_12() *Dialect {
	meta, err := uri.Parse(draft202012MetaschemaURI)
	if err != nil {
		panic(err)
	}
	return NewDialect(meta, []Keyword{
		schemaKeyword{},
		idKeyword{},
		legacyIDKeyword{},
		anchorKeyword{},
		dynamicAnchorKeyword{},
		recursiveAnchorKeyword{},
		defsKeyword{},
		legacyDefsKeyword{},

		refKeyword{},
		dynamicRefKeyword{},
		recursiveRefKeyword{},

		typeKeyword{},
		enumKeyword{},
		constKeyword{},

		multipleOfKeyword{},
		maximumKeyword{},
		exclusiveMaximumKeyword{},
		minimumKeyword{},
		exclusiveMinimumKeyword{},

		maxLengthKeyword{},
		minLengthKeyword{},
		patternKeyword{},
		formatKeyword{},
		contentKeyword{},

		maxItemsKeyword{},
		minItemsKeyword{},
		uniqueItemsKeyword{},
		prefixItemsKeyword{},
		itemsKeyword{},
		containsKeyword{},

		maxPropertiesKeyword{},
		minPropertiesKeyword{},
		requiredKeyword{},
		dependentRequiredKeyword{},
		propertyNamesKeyword{},
		propertiesKeyword{},
		patternPropertiesKeyword{},
		additionalPropertiesKeyword{},

		dependentSchemasKeyword{},
		allOfKeyword{},
		anyOfKeyword{},
		oneOfKeyword{},
		notKeyword{},
		ifKeyword{},

		unevaluatedItemsKeyword{},
		unevaluatedPropertiesKeyword{},
	})
}
