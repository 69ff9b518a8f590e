// rayai-sim drives the whole task core end to end in one process: it builds
// specifications, admits instances to a task log, plays a scheduler walking
// each attempt through waiting/scheduled/running/done, and ships every state
// change as an encoded update delta, the way a real deployment would between
// processes.
package main

import "os"

func main() {
    os.Exit(run(ParseFlags(os.Args[1:])))
}
