// Package absa holds the aggregation core of the dashboard: sentiment
// scoring, platform ranking and review-text aggregation.
//
// Every function is a pure, single pass over a loaded table. Nothing is
// cached or mutated between calls; callers load once per render and pass
// the records in explicitly.
package absa
