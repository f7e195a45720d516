// Package faker generates synthetic vCon containers for testing, demos and
// data-set seeding. A Backend produces a conversation Script (subject,
// participants, ordered turns) and the Faker assembles a complete valid
// container from it: parties, base64url-encoded text dialog, a transcript
// analysis and a script attachment.
//
// Backends (OpenAI, Anthropic) live in sub-packages so the core assembly
// logic stays decoupled from vendor SDKs; StaticBackend provides canned
// scripts for offline use.
package faker
