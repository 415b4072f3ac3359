package model

// Version is the release version reported by --version and checked by --update.
const Version = "0.3.1"

// DefaultFile is read when no file is given on the command line.
const DefaultFile = "data.txt"
