// Package pave (Parse And Validate Everything) coerces and validates loosely
// typed request parameters against declarations made in code.
//
// Parameters arrive as a map[string]any, usually straight from a query
// string, a form or a JSON body (see [FromRequest] and [FromJSON]). Each
// declaration names a parameter, its [Type] and its [Options]:
//
//	p := pave.New(params, pave.EvaluatorOpts{})
//	if _, err := p.Param("price", pave.Decimal, pave.Options{Required: true, Precision: 6}); err != nil {
//		return err
//	}
//
// A declared parameter goes through these steps, stopping at the first
// failure:
//   - Presence: absent parameters without a default that are not required
//     are skipped.
//   - Coercion: text and other representations are converted to the
//     declared type. Empty text counts as missing for non-text types.
//   - Default: a missing value takes the default, if any.
//   - Required: a value still missing is rejected.
//   - Nested declarations: Hash and Array parameters run their blocks over
//     their children, tracking paths such as book[authors][0][name].
//   - Transform: the value is replaced by the transform's result.
//   - Validation: required, blank, format, is, in, min, max, min_length,
//     max_length and custom rules, in that order.
//
// The final value is written back into the parameter map. Failures are
// returned as *[InvalidParameterError], which carries the path, the
// [Reason] and a message rendered from a [Catalog]. Messages can be
// replaced per parameter with Options.Message or per application by
// loading YAML or TOML catalogs.
//
// Every evaluator also records the declared paths in a [Permitted] tree,
// which a host framework can use to drop undeclared input.
package pave
