// Package services defines the source and target provider abstractions and implements them for Pandora and Spotify.
//
// # Interfaces
//
// [SourceService] is a read-only provider the migration pulls liked songs from.
// [TargetService] is a provider the migration writes playlists into.
// The migration engine in internal/tasks only ever sees these two interfaces.
//
// # Pandora Implementation
//
// [PandoraService] authenticates against the unofficial Pandora web API with a
// CSRF token (harvested from a cookie) plus a username/password login that
// yields an auth token. Both tokens ride as headers on every subsequent call.
// Station feedback is paginated with a fixed page size; a probe request reads
// the total count before the pages are walked.
//
// # Spotify Implementation
//
// [SpotifyService] uses OAuth2 authorization-code flow with a persisted
// refresh token. Authorization prefers the silent refresh grant and falls back
// to interactive consent via a pluggable [ConsentFunc], so the CLI can choose
// between a localhost callback server and a pasted redirect URL.
package services
