// README: Common identifier types shared across modules.
package types

// ID identifies a user (rider or driver). Rides use int64 sequence ids.
type ID string
