// Package dataset persists the cleaned record set and serves it back as a
// shared, immutable domain.Dataset.
//
// Store owns the on-disk artifact: a CSV file with the header
// year,offense_category,region written and read through gota dataframes.
// Saves go to a temporary file in the artifact's directory and are renamed
// into place, so readers see either the previous artifact or the new one.
//
// Loader is the process-wide accessor. The first caller loads the artifact;
// concurrent first callers share that load and every later caller gets the
// cached dataset until Reload.
package dataset
