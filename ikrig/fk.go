package ikrig

// Solve computes the end-effector pose for a root-to-tip chain given a joint
// angle (or displacement, for prismatic joints) per joint name. Joints not
// present in angles are treated as at their zero position. Returns the tip
// pose in root-link space (spec §4.9: "evaluates forward kinematics to emit
// target-link pose and joint names").
func Solve(chain []Joint, angles map[string]float32) Pose {
	pose := Pose{Rotation: IdentityQuat()}
	for _, j := range chain {
		motion := Pose{Rotation: IdentityQuat()}
		switch j.Type {
		case JointRevolute, JointContinuous:
			motion.Rotation = quatFromAxisAngle(j.Axis, angles[j.Name])
		case JointPrismatic:
			motion.Translation = scaleVec(normalize(j.Axis), angles[j.Name])
		}
		local := composePose(j.Origin, motion)
		pose = composePose(pose, local)
	}
	pose.Rotation = normalizeQuat(pose.Rotation)
	return pose
}

// JointNames returns the chain's joint names in root-to-tip order, matching
// the Record key set UrdfFk/UrdfIk* outputs use (spec §4.9).
func JointNames(chain []Joint) []string {
	names := make([]string, len(chain))
	for i, j := range chain {
		names[i] = j.Name
	}
	return names
}
