package kernel

const (
	rayWidth    = 100
	rayHeight   = 100
	rayCenter   = 50
	rayRadiusSq = 1600
)

// RayTrace counts the cells of a 100x100 grid whose offset from (50, 50)
// lies strictly inside radius 40.
func RayTrace() int32 {
	var hits int32
	for y := int32(0); y < rayHeight; y++ {
		for x := int32(0); x < rayWidth; x++ {
			dx := x - rayCenter
			dy := y - rayCenter
			if dx*dx+dy*dy < rayRadiusSq {
				hits++
			}
		}
	}
	return hits
}
