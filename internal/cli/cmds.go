package cli

func regCommands() {
	//Root
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(findCmd)
}
