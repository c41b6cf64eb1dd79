package cli

func init() {
	AddSubcommand(newFindCommand())
	AddSubcommand(newFormatCommand())
	AddSubcommand(newDiffCommand())
	AddSubcommand(newCommonCommand())
	AddSubcommand(newSubtractCommand())
	AddSubcommand(newMergeCommand())
	AddSubcommand(newValidateCommand())
	AddSubcommand(newRewriteCommand())
	AddSubcommand(newBraceExprCommand())
}
