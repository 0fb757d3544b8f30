package config

// ResetCache exposes resetCache to the external test package.
var ResetCache = resetCache
