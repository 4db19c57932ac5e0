// Package regmv renames or copies files in batches using a regular
// expression and a replacement template.
//
// Every listed path whose name (or relative path) matches the pattern yields
// a [CaptureSet]. Transforms such as arith, default, index and case rewrite
// the capture sets, then the template is rendered against each one to
// produce a destination. [Build] turns this into a [Plan], [Plan.Check]
// reports every conflict in the batch, and [Plan.Execute] performs the
// operations in dependency order, breaking cycles through temporary names.
//
// Template syntax:
//
//	$1 ${12} $name ${name}   capture groups
//	$$                       a literal dollar sign
//
// Transforms are registered by name and can be extended with [Register].
package regmv
