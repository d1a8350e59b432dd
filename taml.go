package taml

// Version is the version of the TAML format implemented by this
// package.
const Version = "1.0.0"
