package postgres

// SQL for the record store. seq ordering matches the in-memory store's
// insertion order so list endpoints behave identically on both backends.

const (
	queryUpsertOrder = `
		INSERT INTO orders (
			id, user_id, shipping_info, items,
			subtotal, tax, shipping_charges, discount, total,
			status, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			user_id          = EXCLUDED.user_id,
			shipping_info    = EXCLUDED.shipping_info,
			items            = EXCLUDED.items,
			subtotal         = EXCLUDED.subtotal,
			tax              = EXCLUDED.tax,
			shipping_charges = EXCLUDED.shipping_charges,
			discount         = EXCLUDED.discount,
			total            = EXCLUDED.total,
			status           = EXCLUDED.status,
			created_at       = EXCLUDED.created_at
	`

	orderColumns = `
		id, user_id, shipping_info, items,
		subtotal, tax, shipping_charges, discount, total,
		status, created_at
	`

	queryDeleteOrder = `DELETE FROM orders WHERE id = $1`

	queryOrderByID = `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	queryOrdersByUser = `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY seq ASC`

	queryAllOrders = `SELECT ` + orderColumns + ` FROM orders ORDER BY seq ASC`

	queryOrdersBetween = `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE created_at >= $1 AND created_at <= $2
		ORDER BY seq ASC
	`

	queryLatestOrders = `SELECT ` + orderColumns + ` FROM orders ORDER BY seq ASC LIMIT $1`

	queryCountOrdersByStatus = `SELECT COUNT(*) FROM orders WHERE status = $1`

	queryUpsertProduct = `
		INSERT INTO products (
			id, name, category, description, photos, price, stock, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			name        = EXCLUDED.name,
			category    = EXCLUDED.category,
			description = EXCLUDED.description,
			photos      = EXCLUDED.photos,
			price       = EXCLUDED.price,
			stock       = EXCLUDED.stock,
			created_at  = EXCLUDED.created_at
	`

	productColumns = `id, name, category, description, photos, price, stock, created_at`

	queryDeleteProduct = `DELETE FROM products WHERE id = $1`

	queryProductByID = `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	queryAllProducts = `SELECT ` + productColumns + ` FROM products ORDER BY seq ASC`

	queryLatestProducts = `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC, seq DESC`

	queryProductsBetween = `
		SELECT ` + productColumns + `
		FROM products
		WHERE created_at >= $1 AND created_at <= $2
		ORDER BY seq ASC
	`

	queryCountProducts = `SELECT COUNT(*) FROM products`

	queryCountProductsInCategory = `SELECT COUNT(*) FROM products WHERE category = $1`

	queryCountOutOfStock = `SELECT COUNT(*) FROM products WHERE stock = 0`

	queryDistinctCategories = `
		SELECT category
		FROM products
		GROUP BY category
		ORDER BY MIN(seq) ASC
	`

	queryUpsertUser = `
		INSERT INTO users (id, name, email, gender, role, dob, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			name       = EXCLUDED.name,
			email      = EXCLUDED.email,
			gender     = EXCLUDED.gender,
			role       = EXCLUDED.role,
			dob        = EXCLUDED.dob,
			created_at = EXCLUDED.created_at
	`

	userColumns = `id, name, email, gender, role, dob, created_at`

	queryAllUsers = `SELECT ` + userColumns + ` FROM users ORDER BY created_at ASC`

	queryUsersBetween = `
		SELECT ` + userColumns + `
		FROM users
		WHERE created_at >= $1 AND created_at <= $2
		ORDER BY created_at ASC
	`

	queryCountUsers = `SELECT COUNT(*) FROM users`

	queryCountUsersByGender = `SELECT COUNT(*) FROM users WHERE gender = $1`

	queryCountUsersByRole = `SELECT COUNT(*) FROM users WHERE role = $1`

	settingOrderAccepting = "order_accepting"

	queryGetSetting = `SELECT value FROM settings WHERE key = $1`

	queryUpsertSetting = `
		INSERT INTO settings (key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET
			value      = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at
	`
)
