package device

const platformEnumerationSupported = true
