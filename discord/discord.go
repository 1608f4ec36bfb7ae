// Package discord holds the wire model shared by the gateway and REST
// surfaces: snowflake IDs and the objects the core machinery names.
package discord

// APIURL is the base URL all REST requests are issued against.
const APIURL = "https://discord.com/api"

// APIVersion is the API version spoken on both surfaces.
const APIVersion = 10

// Version is the library version, reported in the User-Agent.
const Version = "0.1.0"
