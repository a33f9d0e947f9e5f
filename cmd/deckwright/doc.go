// Command deckwright turns a topic into a presentation deck, a speaker
// script, and per-slide notes.
//
// Subcommands:
//
//	generate   run the pipeline for one topic
//	themes     list visual themes
//	layouts    list slide layouts and their areas
//	history    list, show, and remove recorded runs
//	config     create or validate the configuration file
//	doctor     run preflight checks against the configuration
//
// A .env file in the working directory (or the path given by --env-file) is
// loaded before configuration, so API keys can live outside the config file.
package main
