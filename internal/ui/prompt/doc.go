// Package prompt provides small interactive prompts. All prompts render
// on stderr so stdout stays usable for command substitution, and they
// are only offered when stdin and stderr are terminals.
//
// Available prompts:
//   - [Confirm]: Yes/No confirmation, defaulting to no
//   - [Select]: single selection from a filterable list
package prompt
