/*
Package cmdbot runs a command-based robot.

A robot is declared by a Container: subsystems (ownership slots over
hardware), default commands, and a binding table that maps controller
triggers to commands with an activation edge (on-true, while-true, ...). The
Robot polls that table, runs the command scheduler once per period and
follows the mode reported by the driver station: entering autonomous
schedules the autonomous routine, leaving it cancels the routine.

# Usage

	cfg := config.Default()
	container, err := robot.New(cfg, hardware, devices, robot.WithLogger(logger))
	if err != nil {
		log.Fatal(err)
	}

	bot, err := cmdbot.New(ctx, container,
		cmdbot.WithDriverStation(station),
		cmdbot.WithPeriod(cfg.Period),
	)
	if err != nil {
		log.Fatal(err)
	}
	_ = bot.Run(ctx)

The control loop is single threaded. Input devices and the driver station
may be updated from other goroutines; everything else belongs to the loop.
*/
package cmdbot
