/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

const (
	UserAgent      = "chesstourney/0.4.0 (+https://github.com/mikeb26/chesstourney)"
	DefaultDataDir = ".chesstourney"
	DefaultPgTable = "tourney_blobs"
	DefaultBucket  = "chesstourney-prod-data"
)
