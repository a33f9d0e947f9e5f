// Package history records pipeline runs in SQLite so past generations can be
// listed and inspected from the CLI.
//
// Each run row captures the request (topic, theme, duration, audience), the
// latest stage and progress label, the produced artifact paths, and the final
// status with any error message. Schema changes bump the version in schema.go;
// users delete the database to adopt the new schema.
package history
