/*
Package command provides the building blocks for robot behavior: leaf
commands, composite groups and decorators.

Leaves embed Base and override the lifecycle hooks they need. Groups
(Sequence, Parallel, Race, Deadline) own their children: a composed command
cannot be composed again nor scheduled on its own.

Example usage:

	routine, err := command.Start(lowGear, scorePosition, openGrabber, wait).
		ThenParallel(stowArm, backUp).
		Named("score_and_back_up").
		Build()
	if err != nil {
		return err
	}
	scheduler.Schedule(routine)
*/
package command
