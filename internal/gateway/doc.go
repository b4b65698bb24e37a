// Package gateway wires the command interpretation pipeline to its HTTP
// ingress and the robot broadcast channel.
//
// # Request flow
//
// A command request runs one fixed sequence:
//
//  1. Append the raw user message to the conversation log
//  2. Spell-correct via the NLP collaborator
//  3. Extract entities from the corrected text
//  4. Build a command (or a fallback response)
//  5. Append the bot response to the log
//  6. If a command was built, broadcast it to connected robots
//
// Steps 2-4 failing surfaces a structured {error, trace} response; the user
// message logged in step 1 stays. Step 6 never fails the request: broadcast
// is fire-and-forget and failures are only logged.
//
// # Robot channel
//
// Robots hold GET /api/robot/stream open and receive dispatched commands as
// SSE "robot_command" events. They report back through POST
// /api/robot/status and /api/robot/error, which append to the log and never
// return a body.
package gateway
