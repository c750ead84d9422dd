package component

// Hitbox is the offensive collider a skill drives during its active window.
type Hitbox interface {
	Initialize(damage int, targets LayerMask)
	SetActive(active bool)
}

// Damageable is anything a hitbox can hurt. TakeDamage reports whether the
// damage landed.
type Damageable interface {
	TakeDamage(amount int) bool
}
