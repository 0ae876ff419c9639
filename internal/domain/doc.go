// Package domain models NUFORC UFO sighting report data.
//
// # Data Source
//
// Sightings originate from the National UFO Reporting Center (NUFORC)
// "scrubbed" CSV export: one row per reported observation with a local
// date/time, city/state/country, a free-text shape descriptor, a duration in
// seconds, geocoded latitude/longitude, and reporter comments.
//
// # NUFORC Data Conventions
//
// Timestamp format:
//
//	"M/D/YYYY HH:MM" in local time, e.g. "10/10/1949 20:30".
//	Midnight is encoded as "24:00" and is normalized to 00:00 of the
//	following day. ISO-style variants appear in some exports and are
//	accepted as well. Rows whose timestamp cannot be parsed keep their
//	non-time fields and are only dropped from time-bucketed aggregates.
//
// Shape descriptors:
//
//	Free text, inconsistently cased and spelled. Descriptors are lowercased,
//	trimmed, and run through a synonym table ("disc" → "disk", "triangular"
//	→ "triangle", ...). Placeholder values ("other", "unspecified", "unk",
//	"various", empty) collapse into the explicit "unknown" category, which
//	counts toward totals but never toward shape rankings.
//
// Duration:
//
//	Seconds as a decimal number. Negative values and outliers above the
//	configured cap (default one week) are excluded from duration statistics
//	without dropping the row. The export contains entries like "2631600"
//	(a month) that would otherwise dominate every median.
//
// Country and state:
//
//	Country codes are lowercased; "gb" is folded into "uk" to match the rest
//	of the dataset. US state codes are uppercased. Missing values map to the
//	"unknown"/"UNKNOWN" sentinels and are excluded from top-N rankings.
//
// # Globe Derivation
//
// Each sighting with valid coordinates becomes one globe point. The point
// radius is a log-scaled, clamped function of duration so that week-long
// reports do not dominate the visual scale, and the color comes from a fixed
// shape palette with deterministic cycling for categories beyond it. See
// [RadiusForDuration] and [ColorForShape].
package domain
