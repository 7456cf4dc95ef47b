package cli

func regCommands() {
	//Root
	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(deriveCmd)
}
