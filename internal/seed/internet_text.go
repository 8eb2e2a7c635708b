package seed

const fundamentosText = `# 🔌 ¿Cómo funciona Internet?

## 🧠 Imagina esto:

Internet es como un sistema de **carreteras invisibles** por donde viajan los **mensajes** entre tu dispositivo (celular, computadora) y otros lugares (como Google, Instagram o YouTube).

Cuando tú envías un mensaje de WhatsApp o ves un video en YouTube, estás usando estas carreteras digitales.

## 📦 ¿Cómo viajan los datos?

Cuando tú visitas una página web, estás enviando una **solicitud** (como una carta) que dice: "¡Hey, quiero ver este sitio!". Esa carta se manda usando **IP** y **DNS**:

### 🏠 IP (Internet Protocol)
Cada dispositivo conectado a Internet tiene una dirección única, como el número de tu casa. 

**Ejemplo**: ` + "`" + `142.250.72.206` + "`" + ` podría ser la dirección de Google.

### 📖 DNS (Domain Name System)
Transforma nombres fáciles como ` + "`" + `google.com` + "`" + ` en direcciones IP. Es como una guía telefónica que traduce nombres a números.

**¿Por qué necesitamos DNS?**
Imagínate tener que recordar ` + "`" + `142.250.72.206` + "`" + ` en vez de simplemente escribir ` + "`" + `google.com` + "`" + `. ¡Sería imposible!`

const protocolosText = `# 🌐 Protocolos de Internet

Los **protocolos** son como **reglas de conversación** para que los dispositivos se entiendan.

Imagina que estás en un país extranjero. Necesitas reglas comunes (un idioma) para comunicarte. Los protocolos son ese "idioma" para las computadoras.

## 📋 Principales protocolos:

### 🌍 HTTP (HyperText Transfer Protocol)
- **¿Para qué sirve?** Transferir páginas web
- **Ejemplo**: Ver una página como ` + "`" + `wikipedia.org\`

const dnsText = `# 🌍 ¿Qué es DNS y cómo funciona?

Cuando escribes ` + "`" + `www.netflix.com` + "`" + `, el navegador **pregunta al DNS**: "¿Cuál es la dirección IP de este sitio?".

## 🔄 Proceso paso a paso:

1. **Tu navegador pregunta al DNS**: "¿Dónde está Netflix?"
2. **El DNS responde con la IP**: "Está en 52.84.150.20"
3. **El navegador va a esa IP**: Se conecta directamente al servidor
4. **Netflix aparece en tu pantalla**: ¡Misión cumplida!

Es como preguntar direcciones en la calle. En lugar de decir "la casa azul con jardín", dices "Calle Principal 123".

## 🧩 Tipos de registros DNS:

### 📍 Registro A
- **¿Qué hace?** Asocia un dominio a una dirección IP
- **Ejemplo**: ` + "`" + `google.com` + "`" + ` → ` + "`" + `142.250.72.206\`

const httpText = `# 🌐 HTTP y los navegadores

Cuando entras a una página web, se usa el protocolo **HTTP** (o su versión segura **HTTPS**).

## 🚀 Ciclo de Solicitud y Respuesta:

Es como ir a un restaurante:

1. **El navegador envía una solicitud** al servidor (ej: "Muéstrame la página de inicio")
   - Como pedirle al mesero: "Quiero ver el menú"

2. **El servidor responde** con la información (HTML, imágenes, etc.)
   - Como cuando el mesero te trae el menú

3. **Tu navegador muestra la página**
   - Como cuando lees el menú que te trajeron

## 📬 Métodos HTTP:

### 🔍 GET - "Dame información"
- **¿Qué hace?** Pedir datos
- **Ejemplo**: Ver una foto en Instagram
- **Analogía**: Pedir ver el menú del restaurante

### 📤 POST - "Aquí tienes información"
- **¿Qué hace?** Enviar datos
- **Ejemplo**: Enviar un formulario de contacto
- **Analogía**: Hacer tu pedido al mesero

### ✏️ PUT - "Actualiza esto"
- **¿Qué hace?** Actualizar datos existentes
- **Ejemplo**: Cambiar tu foto de perfil
- **Analogía**: Cambiar tu pedido antes de que llegue

### 🗑️ DELETE - "Elimina esto"
- **¿Qué hace?** Eliminar algo
- **Ejemplo**: Borrar una publicación
- **Analogía**: Cancelar tu pedido

## 🎯 Códigos de Estado HTTP:

- **200**: "¡Todo bien!" - La página se cargó correctamente
- **404**: "No encontrado" - La página no existe
- **500**: "Error del servidor" - Algo falló en el servidor`

const seguridadText = `# 🔒 Seguridad en la Web

## 🍪 Cookies: Las Notas Adhesivas Digitales

Las **cookies** son pequeños archivos que un sitio web guarda en tu computadora para recordar cosas sobre ti.

### ¿Para qué sirven?
- Recordar tu idioma preferido
- Mantener tu sesión iniciada
- Guardar productos en tu carrito de compras
- Recordar tus preferencias

**Analogía**: Son como notas adhesivas que un comerciante pone en tu expediente para recordar que prefieres café sin azúcar.

## 💼 Sesiones: Tu Visita al Sitio Web

Las **sesiones** almacenan datos temporales mientras usas un sitio web.

**Ejemplo**: Mientras compras en línea, la sesión recuerda qué productos agregaste al carrito.

**Analogía**: Es como cuando vas a un hotel y te dan una llave temporal que funciona solo durante tu estadía.

## 🌍 CORS: El Guardia de Seguridad

**CORS** (Cross-Origin Resource Sharing) es una regla que dice **qué sitios pueden pedir datos a otros**.

### ¿Por qué es importante?
Protege tu información de sitios maliciosos que podrían intentar robar tus datos.

**Analogía**: Es como un guardia de seguridad que verifica si alguien tiene permiso para entrar a cierta área del edificio.

## 🔐 HTTPS: La Versión Segura de HTTP

**HTTPS** es como HTTP pero **con seguridad**. Protege tus datos para que nadie los vea mientras viajan por Internet.

### 🔒 ¿Qué es encriptación?

La encriptación transforma tus datos en algo ilegible para quien no tenga la "clave". Solo el destinatario puede leerlo.

**Ejemplo**: 
- Tu mensaje: "Hola amigo"
- Encriptado: "Km3x9 4m1g0"
- Solo quien tiene la clave puede leer "Hola amigo"

### 📄 Certificados SSL

Los sitios seguros usan **certificados digitales** que:
- Prueban que el sitio es confiable
- Encriptan toda la comunicación
- Aparecen como un candado 🔒 en tu navegador

**Analogía**: Es como el sello oficial en un documento importante que prueba que es auténtico.`

const resumenText = `## ✅ Resumen Final:

| Concepto   | ¿Qué es?                                 | Analogía |
| ---------- | ---------------------------------------- | -------- |
| **IP**         | Dirección única de cada dispositivo     | Número de casa |
| **DNS**        | Traductor de nombres a IP               | Guía telefónica |
| **HTTP/HTTPS** | Protocolos para acceder a páginas web   | Idioma para comunicarse |
| **Cookies**    | Archivos para recordar tu información   | Notas adhesivas |
| **SSL/TLS**    | Cifrado para mantener los datos seguros | Sobre cerrado para cartas |

## 🧠 Actividad Final:

**Simulación del proceso completo:**

Imagina que quieres ver un video en YouTube. Describe paso a paso:

1. ¿Qué pasa cuando escribes ` + "`" + `youtube.com` + "`" + `?
2. ¿Cómo encuentra tu navegador la dirección IP?
3. ¿Qué protocolo usa para la comunicación?
4. ¿Cómo sabe el sitio que eres tú si ya habías iniciado sesión?
5. ¿Por qué ves el candado 🔒 en la barra de direcciones?

**Respuesta paso a paso:**
1. El navegador pregunta al DNS por la IP de YouTube
2. DNS responde con la dirección IP (ej: 208.65.153.238)
3. Tu navegador usa HTTPS para comunicarse de forma segura
4. Las cookies guardan tu información de sesión
5. El certificado SSL de YouTube asegura la conexión (candado 🔒)`
