package anvil

// Version is the anvil release version.
const Version = "0.1.0"
