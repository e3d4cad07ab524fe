package steamshots

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Mirror Steam screenshots into your pictures folder"
	MsgLinkShort       = "Build or refresh the screenshot link farm"
	MsgWatchShort      = "Keep the farm fresh while Steam writes screenshots"
	MsgStatusShort     = "Show the state of every link in the farm"
	MsgUnlinkShort     = "Remove the farm, screenshots stay put"
	MsgGenconfigShort  = "Print or write the configuration"
	MsgDocsShort       = "Read the built-in documentation"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgAborted       = "Aborted, nothing was removed."
	MsgNothingToDo   = "Nothing to remove, the farm is already gone."
	MsgConfigExists  = "Config file already exists, nothing written."
	MsgConfigWritten = "Wrote %s\n"

	// Prompts
	MsgUnlinkConfirm = "Remove these links"

	// Flag descriptions
	MsgFlagVerbose   = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun    = "Preview changes without executing them"
	MsgFlagConfig    = "Config file to load instead of the default"
	MsgFlagDest      = "Farm directory, overrides the configured destination"
	MsgFlagFolder    = "Farm folder name inside your pictures directory"
	MsgFlagSteamRoot = "Steam installation root, skips probing"
	MsgFlagDebounce  = "Quiet window between a change burst and the next pass"
	MsgFlagYes       = "Skip the confirmation prompt"
	MsgFlagEffective = "Print the merged effective config instead of the defaults"
	MsgFlagWrite     = "Save to the user config path instead of printing"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/link-long.txt
	msgLinkLongRaw string
	MsgLinkLong    = strings.TrimSpace(msgLinkLongRaw)

	//go:embed msgs/link-example.txt
	msgLinkExampleRaw string
	MsgLinkExample    = strings.TrimSpace(msgLinkExampleRaw)

	//go:embed msgs/watch-long.txt
	msgWatchLongRaw string
	MsgWatchLong    = strings.TrimSpace(msgWatchLongRaw)

	//go:embed msgs/watch-example.txt
	msgWatchExampleRaw string
	MsgWatchExample    = strings.TrimSpace(msgWatchExampleRaw)

	//go:embed msgs/status-long.txt
	msgStatusLongRaw string
	MsgStatusLong    = strings.TrimSpace(msgStatusLongRaw)

	//go:embed msgs/status-example.txt
	msgStatusExampleRaw string
	MsgStatusExample    = strings.TrimSpace(msgStatusExampleRaw)

	//go:embed msgs/unlink-long.txt
	msgUnlinkLongRaw string
	MsgUnlinkLong    = strings.TrimSpace(msgUnlinkLongRaw)

	//go:embed msgs/unlink-example.txt
	msgUnlinkExampleRaw string
	MsgUnlinkExample    = strings.TrimSpace(msgUnlinkExampleRaw)

	//go:embed msgs/genconfig-long.txt
	msgGenconfigLongRaw string
	MsgGenconfigLong    = strings.TrimSpace(msgGenconfigLongRaw)

	//go:embed msgs/genconfig-example.txt
	msgGenconfigExampleRaw string
	MsgGenconfigExample    = strings.TrimSpace(msgGenconfigExampleRaw)

	//go:embed msgs/docs-long.txt
	msgDocsLongRaw string
	MsgDocsLong    = strings.TrimSpace(msgDocsLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	// The usage template keeps its trailing newline, cobra appends nothing.
	//go:embed msgs/usage-template.txt
	MsgUsageTemplate string
)
