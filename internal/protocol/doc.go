// Package protocol defines the wire format spoken between xbuild clients and
// the daemon.
//
// Every message is an [Envelope] encoded as a single line of JSON. A client
// opens a connection, writes one request envelope and reads until it sees a
// response envelope. For build requests the daemon first streams the build
// log over the same connection, one JSON record per line; records never carry
// a top-level "command" key, which is how [IsEnvelope] tells them apart.
//
// Example usage:
//
//	data, err := protocol.Encode(protocol.CmdBuild, &protocol.BuildRequest{
//	    Artifacts: "/tmp/artifacts",
//	})
//	if err != nil {
//	    return err
//	}
//	conn.Write(append(data, '\n'))
//
//	env, payload, err := protocol.Decode(line)
//	if err != nil {
//	    return err
//	}
//	if env.Command == protocol.CmdOK {
//	    result, err := protocol.DecodePayload[protocol.BuildResult](payload)
//	    ...
//	}
package protocol
